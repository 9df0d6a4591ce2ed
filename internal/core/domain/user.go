package domain

// Param names settable through the HTTP surface.
const (
	ParamSheetID      = "sheet_id"
	ParamExternalPath = "external_path"
)

// TokenKind selects which stored credential to read.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// UserRecord is the per-subject document holding the OAuth credential pair and
// the user's publishing parameters. An empty string means the field is unset;
// fields are updated with merge semantics, so writing one never clobbers the
// others.
type UserRecord struct {
	SubjectID    string `json:"subjectID"` // Google 'sub' claim, primary key
	AccessToken  string `json:"-"`
	RefreshToken string `json:"-"`
	SheetID      string `json:"sheetID"`
	ExternalPath string `json:"externalPath"`
}

// PublishTarget is one row of the publishable-users listing: a user with a
// non-empty sheet_id. ExternalPath may still be empty; the publish driver
// re-checks it before writing anything.
type PublishTarget struct {
	SubjectID    string
	SheetID      string
	ExternalPath string
}
