package webhook

// Notification is the webhook body QuickBooks posts on entity changes.
type Notification struct {
	EventNotifications []EventNotification `json:"eventNotifications"`
}

type EventNotification struct {
	RealmID         string          `json:"realmId"`
	DataChangeEvent DataChangeEvent `json:"dataChangeEvent"`
}

type DataChangeEvent struct {
	Entities []EntityEvent `json:"entities"`
}

type EntityEvent struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	Operation string `json:"operation"`
}

// Challenge is the endpoint-verification handshake body; it is echoed back
// without signature checking.
type Challenge struct {
	Challenge string `json:"challenge"`
}
