package handler

type ContextKey string

var (
	RoleCtxKey    ContextKey = "role"
	SubCtxKey     ContextKey = "sub"
	MyInfoCtx     ContextKey = "myInfo"
	UserInfoCtx   ContextKey = "userInfo"
	ShiftCtx      ContextKey = "shift"
	AssignmentCtx ContextKey = "assignment"
	TimesheetCtx  ContextKey = "timesheet"
)
