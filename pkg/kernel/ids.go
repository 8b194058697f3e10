package kernel

type UserID string

func NewUserID(id string) UserID { return UserID(id) }
func (u UserID) String() string  { return string(u) }
func (u UserID) IsEmpty() bool   { return string(u) == "" }

type PostingID string

func NewPostingID(id string) PostingID { return PostingID(id) }
func (p PostingID) String() string     { return string(p) }
func (p PostingID) IsEmpty() bool      { return string(p) == "" }

type ResumeID string

func NewResumeID(id string) ResumeID { return ResumeID(id) }
func (r ResumeID) String() string    { return string(r) }
func (r ResumeID) IsEmpty() bool     { return string(r) == "" }
