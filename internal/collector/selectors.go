package collector

// Reddit profile page selectors for the scrape fallback. These target the
// legacy profile markup and break whenever Reddit reshuffles its class names.
const (
	PostContainer = `div.Post`

	PostTitle     = `h3._eYtD2XCVieq6emjKBH3m`
	PostBody      = `div._292iotee39Lmt0MkQZ2hPV`
	PostSubreddit = `a._3ryJoIoycVkA88fy40qNJc`
	// PostTimestamp is the "x hours ago" link; its href is the permalink.
	PostTimestamp = `a._3jOxDPIQ0KaOWpzvSQo-1s`
)
