package model

// User 用户表
type User struct {
	BaseModel
	UserId   string `gorm:"column:user_id;uniqueIndex" json:"userId"`
	Username string `gorm:"column:username;uniqueIndex" json:"username"`
	Email    string `gorm:"column:email;index" json:"email"`
	Password string `gorm:"column:password" json:"-"` // bcrypt hash
	FullName string `gorm:"column:full_name" json:"fullName"`
	IsAdmin  int    `gorm:"column:is_admin" json:"isAdmin"` // 0: normal, 1: platform admin
}

func (User) TableName() string {
	return "t_user"
}

// RegisterReq register request
type RegisterReq struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"fullName"`
}

// LoginReq login request
type LoginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResp login response
type LoginResp struct {
	UserId       string `json:"userId"`
	Username     string `json:"username"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserResp user response
type UserResp struct {
	UserId   string `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

func ToUserResp(u *User) *UserResp {
	return &UserResp{
		UserId:   u.UserId,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
	}
}
