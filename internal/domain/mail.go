package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateOfficerMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type ChangeEmailMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type StaffingAlertMailData struct {
	AlertID            int64  `json:"alertID"`
	Date               string `json:"date"`
	ShiftName          string `json:"shiftName"`
	MissingSupervisors int32  `json:"missingSupervisors"`
	MissingOfficers    int32  `json:"missingOfficers"`
}
