package types

// StorageFileIdentity describes an uploaded file staged on the local
// filesystem before it is pushed to object storage.
type StorageFileIdentity struct {
	UUID        string
	FileName    string
	Extension   string
	StagedPath  string
	Size        int64
	ContentType string
}

// SessionJWT is the claim set carried by a first-party session token.
type SessionJWT struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RateRequest struct {
	Star int `json:"star" binding:"required"`
}

type PostCommentRequest struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}

// ContentForm is the admin create/update payload. The file itself arrives as
// a separate multipart part handled by the upload middleware.
type ContentForm struct {
	Title       string `form:"title" binding:"required"`
	Category    string `form:"category" binding:"required"`
	Description string `form:"description" binding:"required"`
	Version     string `form:"version" binding:"required"`
	ImageURL    string `form:"image_url" binding:"required"`
}
