package topics

const (
	// Atividade do cliente (sessão + ações sobre apostas)
	Activity = "paris_activity"

	// DLQ
	ActivityDLQ = "paris_activity_dlq"
)
