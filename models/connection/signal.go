package connection

const (
	CodeSessionID uint8 = iota
	CodeCreateBoard
	CodeFire
	CodeRenderBoard
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent
)

type Signal struct {
	Code uint8 `json:"code"`
}
