package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// auth
	RouteAuth  = RouteApiV1 + "/auth"
	RouteLogin = RouteAuth + "/login"

	RouteDownloads = RouteApiV1 + "/downloads"
	RouteUserStats = RouteApiV1 + "/users/:user_id/stats"

	// admin
	RouteAdmin          = RouteApiV1 + "/admin"
	RouteAdminDownloads = RouteAdmin + "/downloads"
	RouteAdminCleanup   = RouteAdmin + "/cleanup"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
