package telegram

//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go
type Client interface {
	// SendMessageToUser delivers a plain text message to the operator.
	SendMessageToUser(message string)

	// NotifyFailure tells the operator an ingestion target failed.
	NotifyFailure(target, reason string)
}
