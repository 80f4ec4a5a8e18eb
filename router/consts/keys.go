package consts

const (
	KeyBackendIssuer = "backendIssuer"
)
