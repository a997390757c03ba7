package handler

type ContextKey string

var (
	RoleCtxKey           ContextKey = "role"
	SubCtxKey            ContextKey = "sub"
	MyInfoCtx            ContextKey = "myInfo"
	OfficerInfoCtx       ContextKey = "officerInfo"
	ShiftTypeCtx         ContextKey = "shiftType"
	RecurringEntryCtx    ContextKey = "recurringEntry"
	ScheduleExceptionCtx ContextKey = "scheduleException"
)
