package users

import "context"

type repoMock struct {
	users  map[int]*User
	nextID int
}

func newRepoMock() *repoMock {
	return &repoMock{
		users:  make(map[int]*User),
		nextID: 1,
	}
}

func (r *repoMock) Add(_ context.Context, user User) (*User, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, ErrUserExists
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = &user
	return &user, nil
}

func (r *repoMock) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *repoMock) Get(_ context.Context, id int) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (r *repoMock) UpdateProfile(_ context.Context, userID int, profile Profile) error {
	u, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.Profile = profile
	return nil
}
