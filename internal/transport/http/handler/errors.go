package handler

const (
	errInternalServer     = "Internal server error"
	errUserExists         = "User already exists"
	errInvalidCredentials = "Invalid credentials"
	errPasswordTooLong    = "Password is too long"

	msgRegistered  = "Admin registered successfully"
	msgBookAdded   = "Book added successfully"
	msgBookUpdated = "Book updated successfully"
	msgBookDeleted = "Book deleted successfully"
)
