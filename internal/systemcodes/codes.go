package systemcodes

const (
	ErrorCodeGeneric     = 1
	ErrorCodeAuth        = 2
	ErrorCodeConfig      = 3
	ErrorCodeInterrupted = 130
)
