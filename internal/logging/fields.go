package logging

// Helper functions for creating common fields

// StringField creates a string field
func StringField(key, value string) Field {
	return Field{Key: key, Value: value}
}

// IntField creates an integer field
func IntField(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// AnyField creates a field holding an arbitrary value
func AnyField(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// ErrorField creates an error field
func ErrorField(err error) Field {
	return Field{Key: "error", Value: err.Error()}
}

// OwnerField creates a field naming the type that owns an intercepted operation
func OwnerField(owner string) Field {
	return Field{Key: "owner", Value: owner}
}

// MethodField creates a field naming an intercepted operation
func MethodField(method string) Field {
	return Field{Key: "method", Value: method}
}

// ArgsField creates a field carrying the arguments of an intercepted operation
func ArgsField(args []interface{}) Field {
	return Field{Key: "args", Value: args}
}

// ResultField creates a field carrying the result of an intercepted operation
func ResultField(result interface{}) Field {
	return Field{Key: "result", Value: result}
}

// RequestIDField creates a request ID field
func RequestIDField(requestID string) Field {
	return Field{Key: "request_id", Value: requestID}
}
