package usecase

import (
	"fmt"
	"testing"

	"consultant-backend/internal/client/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memClientRepo struct {
	clients map[string]*domain.Client
	nextID  int
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{clients: make(map[string]*domain.Client)}
}

func (r *memClientRepo) Create(client *domain.Client) error {
	r.nextID++
	if client.ID == "" {
		client.ID = fmt.Sprintf("c-%d", r.nextID)
	}
	r.clients[client.ID] = client
	return nil
}

func (r *memClientRepo) FindByID(id string) (*domain.Client, error) {
	return r.clients[id], nil
}

func (r *memClientRepo) FindByMember(userID string) ([]*domain.Client, error) {
	var out []*domain.Client
	for _, c := range r.clients {
		if c.CreatedBy == userID {
			out = append(out, c)
			continue
		}
		for _, m := range c.Members {
			if m == userID {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func (r *memClientRepo) Update(client *domain.Client) error {
	r.clients[client.ID] = client
	return nil
}

func (r *memClientRepo) Delete(id string) error {
	delete(r.clients, id)
	return nil
}

func TestCreateClientCreatorIsMember(t *testing.T) {
	uc := NewClientUsecase(newMemClientRepo())

	client, err := uc.CreateClient("u1", "Acme", "data platform work")
	require.NoError(t, err)
	assert.Equal(t, "u1", client.CreatedBy)
	assert.Contains(t, client.Members, "u1")
}

func TestCreateClientRequiresName(t *testing.T) {
	uc := NewClientUsecase(newMemClientRepo())

	_, err := uc.CreateClient("u1", "", "")
	assert.Error(t, err)
}

func TestGetClientUnauthorized(t *testing.T) {
	uc := NewClientUsecase(newMemClientRepo())

	client, err := uc.CreateClient("u1", "Acme", "")
	require.NoError(t, err)

	_, err = uc.GetClient("stranger", client.ID)
	assert.Error(t, err)
}

func TestAddMemberGrantsAccess(t *testing.T) {
	uc := NewClientUsecase(newMemClientRepo())

	client, err := uc.CreateClient("u1", "Acme", "")
	require.NoError(t, err)

	require.NoError(t, uc.AddMember("u1", client.ID, "u2"))

	got, err := uc.GetClient("u2", client.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, got.ID)
}

func TestAddMemberIdempotent(t *testing.T) {
	uc := NewClientUsecase(newMemClientRepo())

	client, err := uc.CreateClient("u1", "Acme", "")
	require.NoError(t, err)

	require.NoError(t, uc.AddMember("u1", client.ID, "u2"))
	require.NoError(t, uc.AddMember("u1", client.ID, "u2"))

	got, _ := uc.GetClient("u1", client.ID)
	count := 0
	for _, m := range got.Members {
		if m == "u2" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestDeleteClientOnlyCreator(t *testing.T) {
	repo := newMemClientRepo()
	uc := NewClientUsecase(repo)

	client, err := uc.CreateClient("u1", "Acme", "")
	require.NoError(t, err)
	require.NoError(t, uc.AddMember("u1", client.ID, "u2"))

	assert.Error(t, uc.DeleteClient("u2", client.ID), "members cannot delete the client")
	require.NoError(t, uc.DeleteClient("u1", client.ID))
	assert.Empty(t, repo.clients)
}
