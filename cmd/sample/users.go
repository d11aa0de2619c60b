package main

import (
	"bytes"
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bjaus/web"
)

// User is the core domain entity.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type HealthResp struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

type ListUsersReq struct {
	Role   string `query:"role" default:""`
	Limit  int    `query:"limit" default:"50" minimum:"1" maximum:"500"`
	Offset int    `query:"offset" default:"0" minimum:"0"`
}

type ListUsersResp struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

type CreateUserReq struct {
	Name  string `json:"name" minLength:"1"`
	Email string `json:"email" pattern:"^[^@]+@[^@]+$"`
	Role  string `json:"role"`
}

// Validate implements web.SelfValidator.
func (r *CreateUserReq) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return web.Error(http.StatusBadRequest, "name is required")
	}
	return nil
}

type UpdateUserReq struct {
	ID   string `path:"id"`
	Body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
}

// Created wraps a user to respond with 201 and a Location header.
type Created struct {
	*User
}

// StatusCode implements web.StatusCoder.
func (Created) StatusCode() int { return http.StatusCreated }

// SetHeaders implements web.HeaderSetter.
func (c Created) SetHeaders(h http.Header) { h.Set("Location", "/v1/users/"+c.ID) }

func registerUsers(reg web.Registrar, store *userStore) {
	web.Get(reg, "/health", web.Func0(func(context.Context) (*HealthResp, error) {
		return &HealthResp{Status: "ok", Time: time.Now()}, nil
	}), web.None())

	web.Get(reg, "/users", web.Func1(store.handleList), web.Bind[ListUsersReq]())

	web.Post(reg, "/users", web.Func1(store.handleCreate), web.Bind[CreateUserReq]())

	web.Get(reg, "/users/{id}", web.Func2(store.handleGet),
		web.Extract2(web.Path[string]("id"), web.OrDefault(web.Header[bool]("X-Include-Deleted"), false)))

	web.Put(reg, "/users/{id}", web.Func1(store.handleUpdate), web.Bind[UpdateUserReq]())

	web.Delete(reg, "/users/{id}", web.Func1(store.handleDelete), web.Path[string]("id"))

	web.Put(reg, "/users/{id}/avatar", web.Async(web.Func3(store.handleUploadAvatar)),
		web.Extract3(web.Path[string]("id"), web.Header[string]("Content-Type"), web.Bytes()))

	web.Get(reg, "/users/{id}/avatar", web.Func1(store.handleDownloadAvatar), web.Path[string]("id"))

	web.Get(reg, "/me", web.Func1(func(_ context.Context, id string) (*web.Redirect, error) {
		return &web.Redirect{URL: "/v1/users/" + id, Status: http.StatusSeeOther}, nil
	}), web.Cookie[string]("user_id"))
}

func (s *userStore) handleList(_ context.Context, req ListUsersReq) (*ListUsersResp, error) {
	users := s.list(req.Role)
	total := len(users)

	if req.Offset > len(users) {
		users = nil
	} else {
		users = users[req.Offset:]
	}
	if req.Limit < len(users) {
		users = users[:req.Limit]
	}
	return &ListUsersResp{Users: users, Total: total}, nil
}

func (s *userStore) handleCreate(_ context.Context, req CreateUserReq) (Created, error) {
	role := req.Role
	if role == "" {
		role = "member"
	}
	return Created{s.create(req.Name, req.Email, role)}, nil
}

func (s *userStore) handleGet(_ context.Context, id string, includeDeleted bool) (*User, error) {
	user, ok := s.get(id, includeDeleted)
	if !ok {
		return nil, web.Errorf(http.StatusNotFound, "user %s not found", id)
	}
	return user, nil
}

func (s *userStore) handleUpdate(_ context.Context, req UpdateUserReq) (*User, error) {
	user, ok := s.update(req.ID, req.Body.Name, req.Body.Email, req.Body.Role)
	if !ok {
		return nil, web.Errorf(http.StatusNotFound, "user %s not found", req.ID)
	}
	return user, nil
}

func (s *userStore) handleDelete(_ context.Context, id string) (web.Void, error) {
	if !s.delete(id) {
		return web.Void{}, web.Errorf(http.StatusNotFound, "user %s not found", id)
	}
	return web.Void{}, nil
}

func (s *userStore) handleUploadAvatar(_ context.Context, id, contentType string, data []byte) (web.Responder, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, web.Errorf(http.StatusUnsupportedMediaType, "avatar must be an image, got %q", contentType)
	}
	if !s.setAvatar(id, contentType, data) {
		return nil, web.Errorf(http.StatusNotFound, "user %s not found", id)
	}
	return web.NoContent(), nil
}

func (s *userStore) handleDownloadAvatar(_ context.Context, id string) (*web.Stream, error) {
	a, ok := s.getAvatar(id)
	if !ok {
		return nil, web.Errorf(http.StatusNotFound, "no avatar for user %s", id)
	}
	return &web.Stream{ContentType: a.contentType, Body: bytes.NewReader(a.data)}, nil
}

type avatar struct {
	contentType string
	data        []byte
}

type userStore struct {
	mu      sync.RWMutex
	users   map[string]*User
	deleted map[string]*User
	avatars map[string]avatar
	nextID  int
}

func newUserStore() *userStore {
	return &userStore{
		users:   make(map[string]*User),
		deleted: make(map[string]*User),
		avatars: make(map[string]avatar),
		nextID:  1,
	}
}

func (s *userStore) list(role string) []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		if role != "" && u.Role != role {
			continue
		}
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (s *userStore) get(id string, includeDeleted bool) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok && includeDeleted {
		u, ok = s.deleted[id]
	}
	if !ok {
		return nil, false
	}
	cp := *u
	return &cp, true
}

func (s *userStore) create(name, email, role string) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := &User{
		ID:        strconv.Itoa(s.nextID),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
	s.nextID++
	s.users[u.ID] = u
	cp := *u
	return &cp
}

func (s *userStore) update(id, name, email, role string) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	if name != "" {
		u.Name = name
	}
	if email != "" {
		u.Email = email
	}
	if role != "" {
		u.Role = role
	}
	cp := *u
	return &cp, true
}

func (s *userStore) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return false
	}
	s.deleted[id] = u
	delete(s.users, id)
	delete(s.avatars, id)
	return true
}

func (s *userStore) setAvatar(id, contentType string, data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false
	}
	s.avatars[id] = avatar{contentType: contentType, data: data}
	return true
}

func (s *userStore) getAvatar(id string) (avatar, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.avatars[id]
	return a, ok
}
