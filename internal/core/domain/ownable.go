package domain

// Ownable is any resource with an owning user. The ownership authorization
// service decides access on the basis of this association alone: a resource
// is mutable and readable only by its owner or by an admin.
type Ownable interface {
	OwnerID() string
}
