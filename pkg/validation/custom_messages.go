package validation

var customValidationMessages = map[string]map[string]string{
	"Email": {
		"required": "email is required",
		"email":    "email is not valid",
	},
	"Username": {
		"required": "username is required",
		"alphanum": "username may only contain letters and numbers",
	},
	"Password": {
		"required": "password is required",
	},
	"NewPassword": {
		"nefield": "new password must differ from the old password",
	},
	"FullName": {
		"required": "full name is required",
	},
}

// CustomMessage returns field specific overrides keyed by tag
func CustomMessage(field string) map[string]string {
	return customValidationMessages[field]
}
