package model

// Staff mirrors a row of the `staff` table.
//
// Fields:
//  ID       - primary key identifier.
//  FullName - display name, used for ordering in listings.
//  Role     - free-text role (stylist, colorist, ...).
//  Phone    - unique contact phone.
//  Email    - unique contact email.
//  HireDate - "YYYY-MM-DD" of hire.
//  Salary   - DECIMAL as string.
type Staff struct {
	ID       uint64 // staff.staff_id
	FullName string // staff.full_name
	Role     string // staff.role
	Phone    string // staff.phone
	Email    string // staff.email
	HireDate string // staff.hire_date
	Salary   string // staff.salary
}
