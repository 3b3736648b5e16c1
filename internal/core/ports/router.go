package ports

// RouteDiscoverer lists the API route files of an application directory.
//
//go:generate mockgen -source=router.go -destination=mocks/mock_router.go -package=mocks
type RouteDiscoverer interface {
	// Routes returns the absolute paths of all route files under appDir.
	Routes(appDir string) ([]string, error)
}
