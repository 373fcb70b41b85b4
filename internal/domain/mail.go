package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type TimesheetEventMailData struct {
	FullName string `json:"fullName"`
	JobName  string `json:"jobName"`
	Event    string `json:"event"`
	Reason   string `json:"reason,omitempty"`
}
