package grammar

// Method is a request method known to the tokenizer.
type Method uint8

const (
	MethodUnknown Method = iota
	MethodDelete
	MethodGet
	MethodHead
	MethodPost
	MethodPut
	MethodConnect
	MethodOptions
	MethodTrace
	MethodCopy
	MethodLock
	MethodMkcol
	MethodMove
	MethodPropfind
	MethodProppatch
	MethodUnlock
	MethodReport
	MethodMkactivity
	MethodCheckout
	MethodMerge
	MethodMSearch
	MethodNotify
	MethodSubscribe
	MethodUnsubscribe
	MethodPatch
)

var methodNames = [...]string{
	MethodUnknown:     "",
	MethodDelete:      "DELETE",
	MethodGet:         "GET",
	MethodHead:        "HEAD",
	MethodPost:        "POST",
	MethodPut:         "PUT",
	MethodConnect:     "CONNECT",
	MethodOptions:     "OPTIONS",
	MethodTrace:       "TRACE",
	MethodCopy:        "COPY",
	MethodLock:        "LOCK",
	MethodMkcol:       "MKCOL",
	MethodMove:        "MOVE",
	MethodPropfind:    "PROPFIND",
	MethodProppatch:   "PROPPATCH",
	MethodUnlock:      "UNLOCK",
	MethodReport:      "REPORT",
	MethodMkactivity:  "MKACTIVITY",
	MethodCheckout:    "CHECKOUT",
	MethodMerge:       "MERGE",
	MethodMSearch:     "M-SEARCH",
	MethodNotify:      "NOTIFY",
	MethodSubscribe:   "SUBSCRIBE",
	MethodUnsubscribe: "UNSUBSCRIBE",
	MethodPatch:       "PATCH",
}

// maxMethodLen is the length of the longest known method name.
const maxMethodLen = len("UNSUBSCRIBE")

func (m Method) String() string {
	if int(m) >= len(methodNames) {
		return ""
	}
	return methodNames[m]
}

func (m Method) IsValid() bool { return m > MethodUnknown && int(m) < len(methodNames) }

// Methods returns the names of all known methods in table order.
func Methods() []string {
	names := make([]string, 0, len(methodNames)-1)
	for _, n := range methodNames[1:] {
		names = append(names, n)
	}
	return names
}

// LookupMethod maps an upper-case method name to a [Method].
// Unknown names give [MethodUnknown].
func LookupMethod(b []byte) Method {
	switch string(b) {
	case "DELETE":
		return MethodDelete
	case "GET":
		return MethodGet
	case "HEAD":
		return MethodHead
	case "POST":
		return MethodPost
	case "PUT":
		return MethodPut
	case "CONNECT":
		return MethodConnect
	case "OPTIONS":
		return MethodOptions
	case "TRACE":
		return MethodTrace
	case "COPY":
		return MethodCopy
	case "LOCK":
		return MethodLock
	case "MKCOL":
		return MethodMkcol
	case "MOVE":
		return MethodMove
	case "PROPFIND":
		return MethodPropfind
	case "PROPPATCH":
		return MethodProppatch
	case "UNLOCK":
		return MethodUnlock
	case "REPORT":
		return MethodReport
	case "MKACTIVITY":
		return MethodMkactivity
	case "CHECKOUT":
		return MethodCheckout
	case "MERGE":
		return MethodMerge
	case "M-SEARCH":
		return MethodMSearch
	case "NOTIFY":
		return MethodNotify
	case "SUBSCRIBE":
		return MethodSubscribe
	case "UNSUBSCRIBE":
		return MethodUnsubscribe
	case "PATCH":
		return MethodPatch
	default:
		return MethodUnknown
	}
}
