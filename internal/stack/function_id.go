package stack

type functionID string

func (id functionID) FunctionID() string {
	return string(id)
}

func (id functionID) Record(...recordOption) string {
	return string(id)
}

// FunctionID returns id as a Caller, or the calling function when id is empty.
func FunctionID(id string) Caller {
	if id != "" {
		return functionID(id)
	}

	return Call(1)
}
