package usecase

// Field keys used in fail outcomes.
const (
	FieldName     = "name"
	FieldPassword = "password"
	FieldRole     = "role"
	FieldID       = "id"
	FieldTitle    = "title"
	FieldTags     = "tags"
)

// Success payload keys.
const (
	KeyToken     = "token"
	KeyUser      = "user"
	KeyUsers     = "users"
	KeyBlogPost  = "blogPost"
	KeyBlogPosts = "blogPosts"
	KeyTag       = "tag"
	KeyTags      = "tags"
	KeyShareURL  = "shareUrl"
)

// Fail explanations.
const (
	MsgNameRequired     = "A name is required."
	MsgPasswordRequired = "A password is required."
	MsgInvalidName      = "Invalid name, check requirements."
	MsgInvalidPassword  = "Invalid password, check requirements."
	MsgNameExists       = "Name already exists."
	MsgNoSuchUser       = "No user with that name exists."
	MsgWrongPassword    = "Wrong password."
	MsgInvalidRole      = "Invalid role."
	MsgTooManyAttempts  = "Too many failed attempts, try again later."

	MsgIDNotInteger   = "ID must be an integer."
	MsgNoSuchBlogPost = "No blog post with that ID exists."
	MsgTitleRequired  = "A title is required."
	MsgInvalidTagName = "Invalid tag name."

	MsgTagExists = "Tag already exists."
	MsgNoSuchTag = "No tag with that name exists."
)

// Error messages. They never carry store or credential detail.
const (
	ErrMsgAuthenticating      = "Error authenticating."
	ErrMsgCreatingUser        = "Error creating user."
	ErrMsgRetrievingUsers     = "Error retrieving users."
	ErrMsgRetrievingUser      = "Error retrieving user."
	ErrMsgUpdatingUser        = "Error updating user."
	ErrMsgDeletingUser        = "Error deleting user."
	ErrMsgCreatingBlogPost    = "Error creating blog post."
	ErrMsgRetrievingBlogPosts = "Error retrieving blog posts."
	ErrMsgRetrievingBlogPost  = "Error retrieving blog post."
	ErrMsgUpdatingBlogPost    = "Error updating blog post."
	ErrMsgDeletingBlogPost    = "Error deleting blog post."
	ErrMsgGeneratingShareCode = "Error generating share code."
	ErrMsgCreatingTag         = "Error creating tag."
	ErrMsgRetrievingTags      = "Error retrieving tags."
	ErrMsgRetrievingTag       = "Error retrieving tag."
	ErrMsgUpdatingTag         = "Error updating tag."
	ErrMsgDeletingTag         = "Error deleting tag."
)
