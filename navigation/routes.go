// Package navigation models the client's route history: the paths the user
// moves between and the listeners that react to those moves.
package navigation

import (
	"regexp"
	"strconv"
)

// Route constants
const (
	RouteRoot           = "/"
	RouteLogin          = "/login"
	RouteCustomerSearch = "/customer/search"
	RouteCustomerInfo   = "/customer/info/"
)

var customerInfoPattern = regexp.MustCompile(`/customer/info/(\d+)`)

// CustomerInfoPath returns the detail route of a customer.
func CustomerInfoPath(customerID int64) string {
	return RouteCustomerInfo + strconv.FormatInt(customerID, 10)
}

// CustomerIDFromPath extracts the numeric id from a customer detail route.
func CustomerIDFromPath(path string) (int64, bool) {
	m := customerInfoPattern.FindStringSubmatch(path)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// IsEntryPath reports whether path is the application root or the login screen.
func IsEntryPath(path string) bool {
	return path == RouteRoot || path == RouteLogin
}
