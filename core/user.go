package core

import (
	"errors"
	"strings"

	"github.com/wansing/patriam/auth"
)

var (
	ErrAdminExists   = errors.New("an admin user exists already")
	ErrDeleteSelf    = errors.New("you can't delete yourself")
	ErrEmptyPassword = errors.New("refusing to set empty password")
	ErrUserExists    = errors.New("username exists already")
	ErrWrongPassword = errors.New("wrong password")
)

type User struct {
	ID    int
	Name  string // lower case, unique
	Email string // optional
	Role  auth.Role
}

// Principal returns the acting identity of the user. It is nil-safe.
func (u *User) Principal() *auth.Principal {
	if u == nil {
		return nil
	}
	return &auth.Principal{
		ID:   u.ID,
		Role: u.Role,
	}
}

type UserDB interface {
	ChangePassword(u *User, old, new string) error
	CountUsersWithRole(role auth.Role) (int, error)
	DeleteUser(u *User) error
	GetAllUsers(limit, offset int) ([]*User, error)
	GetUser(id int) (*User, error)
	GetUserByName(name string) (*User, error)
	InsertUser(name, email, password string, role auth.Role) (*User, error) // stores the user and the password hash atomically
	LoginUser(name, password string) (*User, error) // returns ErrNotFound if the user does not exist or the password is wrong
	SetPassword(u *User, password string) error
	SetRole(u *User, role auth.Role) error
}

func normalizeName(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", &ValidationError{"username"}
	}
	return name, nil
}

// validPassword rejects passwords which are empty or whitespace only. Passwords are stored as entered, they are never trimmed.
func validPassword(password string) bool {
	return strings.TrimSpace(password) != ""
}

func requireAdmin(p *auth.Principal) error {
	if p == nil {
		return auth.ErrUnauthenticated
	}
	if !p.IsAdmin() {
		return auth.ErrForbidden
	}
	return nil
}

// SetPassword shadows UserDB.SetPassword.
func (c *CoreDB) SetPassword(u *User, password string) error {
	if !validPassword(password) {
		return ErrEmptyPassword
	}
	return adapterError("set password", c.UserDB.SetPassword(u, password))
}

// RegisterUser creates a user. Only admins can do that.
func (c *CoreDB) RegisterUser(p *auth.Principal, name, email, password string, role auth.Role) (*User, error) {

	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	u, err := c.CreateUser(name, email, password, role)
	if err != nil {
		return nil, err
	}

	c.Log.Info("user registered", "user", u.ID, "name", u.Name, "role", u.Role.String(), "principal", p.ID)
	return u, nil
}

// SetupAdmin creates the first admin user. It fails if an admin exists.
func (c *CoreDB) SetupAdmin(name, password string) (*User, error) {

	count, err := c.UserDB.CountUsersWithRole(auth.Admin)
	if err != nil {
		return nil, adapterError("count admins", err)
	}
	if count > 0 {
		return nil, ErrAdminExists
	}

	u, err := c.CreateUser(name, "", password, auth.Admin)
	if err != nil {
		return nil, err
	}

	c.Log.Info("admin user created", "user", u.ID, "name", u.Name)
	return u, nil
}

// CreateUser validates and inserts a user without checking permissions. The command line uses it directly.
func (c *CoreDB) CreateUser(name, email, password string, role auth.Role) (*User, error) {

	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}

	if !role.Valid() {
		return nil, &ValidationError{"role"}
	}

	if !validPassword(password) {
		return nil, &ValidationError{"password"}
	}

	if _, err := c.UserDB.GetUserByName(name); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, ErrNotFound) {
		return nil, adapterError("get user", err)
	}

	u, err := c.UserDB.InsertUser(name, strings.TrimSpace(email), password, role)
	if err != nil {
		return nil, adapterError("insert user", err)
	}

	return u, nil
}

// OpenUser returns a user if the principal is an admin or the user itself.
func (c *CoreDB) OpenUser(p *auth.Principal, id int) (*User, error) {
	if p == nil {
		return nil, auth.ErrUnauthenticated
	}
	if !p.IsAdmin() && p.ID != id {
		return nil, auth.ErrForbidden
	}
	u, err := c.UserDB.GetUser(id)
	return u, adapterError("get user", err)
}

// Users returns all users to an admin.
func (c *CoreDB) Users(p *auth.Principal, limit, offset int) ([]*User, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}
	users, err := c.UserDB.GetAllUsers(limit, offset)
	return users, adapterError("get users", err)
}

// ChangePassword shadows UserDB.ChangePassword. Users must enter their old password, admins don't have to.
// A wrong old password returns ErrWrongPassword.
func (c *CoreDB) ChangePassword(p *auth.Principal, userID int, old, new string) error {

	u, err := c.OpenUser(p, userID)
	if err != nil {
		return err
	}

	if !validPassword(new) {
		return &ValidationError{"new password"}
	}

	if p.IsAdmin() {
		err = c.SetPassword(u, new)
	} else {
		err = c.UserDB.ChangePassword(u, old, new)
		if errors.Is(err, ErrNotFound) {
			return ErrWrongPassword
		}
		err = adapterError("change password", err)
	}
	if err != nil {
		return err
	}

	c.Log.Info("password changed", "user", u.ID, "principal", p.ID)
	return nil
}

// SetUserRole shadows UserDB.SetRole. Only admins can change roles, and not their own.
func (c *CoreDB) SetUserRole(p *auth.Principal, userID int, role auth.Role) error {

	if err := requireAdmin(p); err != nil {
		return err
	}

	if !role.Valid() {
		return &ValidationError{"role"}
	}

	if p.ID == userID {
		return auth.ErrForbidden // own role
	}

	u, err := c.UserDB.GetUser(userID)
	if err != nil {
		return adapterError("get user", err)
	}

	if err := c.UserDB.SetRole(u, role); err != nil {
		return adapterError("set role", err)
	}

	c.Log.Info("role changed", "user", u.ID, "from", u.Role.String(), "to", role.String(), "principal", p.ID)
	return nil
}

// DeleteUser shadows UserDB.DeleteUser. The articles and comments of the user are deleted as well.
func (c *CoreDB) DeleteUser(p *auth.Principal, userID int) error {

	if err := requireAdmin(p); err != nil {
		return err
	}

	if p.ID == userID {
		return ErrDeleteSelf
	}

	u, err := c.UserDB.GetUser(userID)
	if err != nil {
		return adapterError("get user", err)
	}

	if err := c.UserDB.DeleteUser(u); err != nil {
		return adapterError("delete user", err)
	}

	c.Log.Info("user deleted", "user", u.ID, "name", u.Name, "principal", p.ID)
	return nil
}
