package domain

import "regexp"

var emailShapeRgx = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// Customer identifies who a ticket is sold to. Phone is optional and may be
// empty.
type Customer struct {
	ID    string
	Name  string
	Email string
	Phone string
}

func NewCustomer(id, name, email, phone string) *Customer {
	return &Customer{
		ID:    id,
		Name:  name,
		Email: email,
		Phone: phone,
	}
}

// EmailValid checks that the email has the shape local@domain.tld. It is a
// syntactic check only; no deliverability verification happens anywhere.
func (c *Customer) EmailValid() bool {
	return emailShapeRgx.MatchString(c.Email)
}

// EmailShapeValid reports whether an address matches the same shape
// EmailValid enforces, for callers validating input before a Customer
// exists.
func EmailShapeValid(email string) bool {
	return emailShapeRgx.MatchString(email)
}
