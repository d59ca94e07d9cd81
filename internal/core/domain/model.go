package domain

// DefaultQuality is applied when a request omits the quality parameter.
const DefaultQuality = 0.8

// ImageFile carries the bytes of a stored image together with the
// metadata a provider needs to persist it again.
type ImageFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Request is the decoded body of an incoming bus message.
type Request struct {
	Action       string        `json:"action"`
	Src          string        `json:"src"`
	Dest         string        `json:"dest"`
	Width        *int          `json:"width"`
	Height       *int          `json:"height"`
	Stretch      bool          `json:"stretch"`
	X            int           `json:"x"`
	Y            int           `json:"y"`
	Quality      *float64      `json:"quality"`
	Destinations []Destination `json:"destinations"`
}

// Destination is a single output of a resizeMultiple request.
type Destination struct {
	Width   *int   `json:"width"`
	Height  *int   `json:"height"`
	Stretch bool   `json:"stretch"`
	Dest    string `json:"dest"`
}

// Reply is the outgoing bus message for both success and failure.
type Reply struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Output  string            `json:"output,omitempty"`
	Size    int               `json:"size,omitempty"`
	Outputs map[string]string `json:"outputs,omitempty"`
}

// Written builds the success reply for a single-destination operation.
func Written(output string, size int) *Reply {
	return &Reply{Status: "ok", Output: output, Size: size}
}

// WrittenAll builds the success reply for a multi-destination operation.
// Keys are "<width>x<height>" of the requested dimensions.
func WrittenAll(outputs map[string]string) *Reply {
	return &Reply{Status: "ok", Outputs: outputs}
}

// Failure builds the error reply for err. Errors outside the request
// error taxonomy fall back to a generic processing failure so internal
// details never leak onto the bus.
func Failure(err error) *Reply {
	return &Reply{Status: "error", Message: Message(err)}
}
