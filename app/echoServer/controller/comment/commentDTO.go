package comment

type CommentReq struct {
	Description string `json:"description" validate:"required"`
}
