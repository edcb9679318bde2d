package handlers

// validator accumulates field-level validation messages in check order.
type validator struct {
	errors []string
}

func newValidator() *validator {
	return &validator{}
}

func (v *validator) checkCond(cond bool, msg string) {
	if cond {
		return
	}
	v.errors = append(v.errors, msg)
}

func (v *validator) hasErrors() bool {
	return len(v.errors) != 0
}

func (v *validator) messages() []string {
	return v.errors
}

func (v *validator) checkUsername(username string) {
	v.checkCond(username != "", "username is required")
	v.checkCond(len(username) <= 50, "username must be at most 50 characters")
}

func (v *validator) checkPassword(password string) {
	v.checkCond(password != "", "password is required")
}

func (v *validator) checkTitle(title string) {
	v.checkCond(title != "", "title is required")
	v.checkCond(len(title) <= 200, "title must be at most 200 characters")
}

func (v *validator) checkDescription(description *string) {
	if description == nil {
		return
	}
	v.checkCond(len(*description) <= 1000, "description must be at most 1000 characters")
}
