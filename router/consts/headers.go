package consts

const (
	HeaderVersion = "X-TRACKER-VERSION"
)
