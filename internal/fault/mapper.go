package fault

import "net/http"

// Response is what a client sees for a fault. It never carries the underlying cause.
type Response struct {
	Status  int
	Code    string
	Message string
}

// Map translates any error into a response. Errors outside the fault set get the
// generic route-not-found response so that internal shapes are not leaked.
func Map(err error) Response {
	kind := KindOf(err)

	switch kind {
	case KindInvalidID:
		return Response{Status: http.StatusBadRequest, Code: kind.String(), Message: "Invalid ID."}
	case KindMissingParameters:
		return Response{Status: http.StatusBadRequest, Code: kind.String(), Message: "Missing parameter."}
	case KindParse:
		return Response{Status: http.StatusBadRequest, Code: kind.String(), Message: "Cannot parse the parameter."}
	case KindQuestionNotFound:
		return Response{Status: http.StatusNotFound, Code: kind.String(), Message: "Question not found."}
	case KindDatabaseQuery:
		return Response{Status: http.StatusInternalServerError, Code: kind.String(), Message: "Cannot process the request."}
	case KindCORSForbidden:
		return Response{Status: http.StatusForbidden, Code: kind.String(), Message: "CORS request forbidden."}
	case KindMalformedBody:
		return Response{Status: http.StatusUnprocessableEntity, Code: kind.String(), Message: "Malformed request body."}
	case KindRateLimited:
		return Response{Status: http.StatusTooManyRequests, Code: kind.String(), Message: "Too many requests."}
	case KindRouteNotFound, KindUnknown:
		return routeNotFound
	}

	return routeNotFound
}

var routeNotFound = Response{
	Status:  http.StatusNotFound,
	Code:    KindRouteNotFound.String(),
	Message: "Route not found.",
}
