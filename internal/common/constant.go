package common

// Document collections.
const (
	BooksCollection = "books"
	UsersCollection = "users"
	ImageCollection = "image"
)

// Object key prefixes.
const (
	UploadsPrefix       = "uploads/"
	ProfileImagesPrefix = "profile_images/"
)

// AvatarFileName is the file name used for every uploaded profile photo.
const AvatarFileName = "avatar.jpg"

// Fallbacks used when a book record lacks the corresponding field.
const (
	UnknownTitle     = "Unknown title"
	UnknownAuthor    = "Unknown author"
	DefaultExtension = "bin"
)
