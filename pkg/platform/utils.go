// pkg/platform/utils.go
package platform

// contains checks if a platform slice contains a value
func contains(slice []Platform, item Platform) bool {
	for _, p := range slice {
		if p == item {
			return true
		}
	}
	return false
}
