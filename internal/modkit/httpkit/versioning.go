package httpkit

import "net/http"

// APIV1 is the path every module mounts under
const APIV1 = "/api/v1"

// MountAPIV1 mounts the versioned API tree behind the shared middleware stack
//
//	httpkit.MountAPIV1(r, httpkit.CommonStack(opts), func(api httpkit.Router) {
//		payroll.MountRoutes(api)
//	})
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, APIV1, mw, mount)
}
