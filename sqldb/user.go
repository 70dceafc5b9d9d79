package sqldb

import (
	"database/sql"
	"errors"

	"github.com/wansing/patriam/auth"
	"github.com/wansing/patriam/core"
	"golang.org/x/crypto/bcrypt"
)

type UserDB struct {
	*sql.DB
	countRole            *sql.Stmt
	delete               *sql.Stmt
	deleteArticles       *sql.Stmt
	deleteArticleComment *sql.Stmt
	deleteComments       *sql.Stmt
	getAll               *sql.Stmt
	get                  *sql.Stmt
	getByName            *sql.Stmt
	insert               *sql.Stmt
	password             *sql.Stmt
	setPassword          *sql.Stmt
	setRole              *sql.Stmt
}

func NewUserDB(db *sql.DB) *UserDB {

	createTables(db)

	var userDB = &UserDB{}
	userDB.DB = db
	userDB.countRole = mustPrepare(db, "SELECT COUNT(*) FROM usr WHERE role = ?")
	userDB.delete = mustPrepare(db, "DELETE FROM usr WHERE id = ?")
	userDB.deleteArticles = mustPrepare(db, "DELETE FROM article WHERE author = ?")
	userDB.deleteArticleComment = mustPrepare(db, "DELETE FROM comment WHERE article IN (SELECT id FROM article WHERE author = ?)")
	userDB.deleteComments = mustPrepare(db, "DELETE FROM comment WHERE author = ?")
	userDB.get = mustPrepare(db, "SELECT id, name, email, role FROM usr WHERE id = ? LIMIT 1")
	userDB.getAll = mustPrepare(db, "SELECT id, name, email, role FROM usr ORDER BY name LIMIT ? OFFSET ?")
	userDB.getByName = mustPrepare(db, "SELECT id, name, email, role FROM usr WHERE name = ? LIMIT 1")
	userDB.insert = mustPrepare(db, "INSERT INTO usr (name, email, role, password) VALUES (?, ?, ?, ?)")
	userDB.password = mustPrepare(db, "SELECT password FROM usr WHERE id = ?")
	userDB.setPassword = mustPrepare(db, "UPDATE usr SET password = ? WHERE id = ?")
	userDB.setRole = mustPrepare(db, "UPDATE usr SET role = ? WHERE id = ?")
	return userDB
}

func scanUser(row scanner) (*core.User, error) {
	var u = &core.User{}
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role); err != nil {
		return nil, notFound(err)
	}
	var err error
	u.Role, err = auth.ParseRole(role)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// checkPassword returns core.ErrNotFound if the password does not match.
func (db *UserDB) checkPassword(id int, password string) error {
	var hash string
	if err := db.password.QueryRow(id).Scan(&hash); err != nil {
		return notFound(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return core.ErrNotFound
	}
	return nil
}

func (db *UserDB) ChangePassword(u *core.User, old, new string) error {
	if err := db.checkPassword(u.ID, old); err != nil {
		return err
	}
	return db.SetPassword(u, new)
}

func (db *UserDB) CountUsersWithRole(role auth.Role) (int, error) {
	var count int
	err := db.countRole.QueryRow(role.String()).Scan(&count)
	return count, err
}

// DeleteUser deletes the user, its articles and all comments on them, and its comments on other articles.
func (db *UserDB) DeleteUser(u *core.User) error {

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	for _, stmt := range []*sql.Stmt{db.deleteArticleComment, db.deleteComments, db.deleteArticles} {
		if _, err := tx.Stmt(stmt).Exec(u.ID); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := mustAffect(tx.Stmt(db.delete).Exec(u.ID)); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (db *UserDB) GetUser(id int) (*core.User, error) {
	return scanUser(db.get.QueryRow(id))
}

func (db *UserDB) GetUserByName(name string) (*core.User, error) {
	return scanUser(db.getByName.QueryRow(name))
}

func (db *UserDB) GetAllUsers(limit, offset int) ([]*core.User, error) {

	var all = []*core.User{}

	rows, err := db.getAll.Query(limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		all = append(all, u)
	}

	return all, rows.Err()
}

// InsertUser stores the user together with the bcrypt hash of its password, so there is never a user without password.
func (db *UserDB) InsertUser(name, email, password string, role auth.Role) (*core.User, error) {

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	result, err := db.insert.Exec(name, email, role.String(), hash)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &core.User{
		ID:    int(id),
		Name:  name,
		Email: email,
		Role:  role,
	}, nil
}

// LoginUser returns core.ErrNotFound if the user does not exist or the password is wrong.
func (db *UserDB) LoginUser(name, password string) (*core.User, error) {

	u, err := db.GetUserByName(name)
	if err != nil {
		return nil, err
	}

	if err := db.checkPassword(u.ID, password); err != nil {
		return nil, err
	}

	return u, nil
}

func hashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("no password given")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

func (db *UserDB) SetPassword(u *core.User, password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	return mustAffect(db.setPassword.Exec(hash, u.ID))
}

func (db *UserDB) SetRole(u *core.User, role auth.Role) error {
	if _, err := db.setRole.Exec(role.String(), u.ID); err != nil {
		return err
	}
	u.Role = role
	return nil
}
