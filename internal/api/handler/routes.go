package handler

import (
	"net/http"

	"github.com/ruasdev/meta-ads-analyzer/internal/api/handler/router"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Report(provider ReportProvider) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/report",
			Method:  http.MethodGet,
			Handler: GetReport(provider),
		},
		{
			Path:    "/v1/report/refresh",
			Method:  http.MethodPost,
			Handler: RefreshReport(provider),
		},
	}
}
