package model

// ViewerKind tags the three identities a request can carry.
type ViewerKind int

const (
	ViewerAnonymous ViewerKind = iota
	ViewerAuthenticated
	ViewerAdmin
)

// Viewer is supplied by the auth layer per request and passed explicitly into
// every catalog call; it is never cached between operations.
type Viewer struct {
	Kind   ViewerKind
	UserID uint64
}

func Anonymous() Viewer {
	return Viewer{Kind: ViewerAnonymous}
}

func AuthenticatedViewer(userID uint64) Viewer {
	return Viewer{Kind: ViewerAuthenticated, UserID: userID}
}

func AdminViewer(userID uint64) Viewer {
	return Viewer{Kind: ViewerAdmin, UserID: userID}
}

func (v Viewer) IsAnonymous() bool {
	return v.Kind == ViewerAnonymous
}

func (v Viewer) IsAdmin() bool {
	return v.Kind == ViewerAdmin
}
