package models

// Email is a rendered message ready for delivery.
type Email struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}
