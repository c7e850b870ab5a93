package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/betting-admin-dashboard/internal/dashboard/apperr"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/cache"
	"github.com/radieske/betting-admin-dashboard/internal/dashboard/model"
)

type mockStaffSource struct {
	mock.Mock
}

func (m *mockStaffSource) EarliestStaff(ctx context.Context) (*model.StaffMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StaffMember), args.Error(1)
}

// memCache é um cache em memória só pra teste
type memCache struct {
	items  map[string]any
	getErr error
}

func (c *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	v, ok := c.items[key]
	if !ok {
		return false, nil
	}
	*(dst.(*model.StaffMember)) = *(v.(*model.StaffMember))
	return true, nil
}

func (c *memCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	c.items[key] = v
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func TestFirstStaffResolver_CachesStaff(t *testing.T) {
	src := new(mockStaffSource)
	staff := &model.StaffMember{ID: "staff-1", FirstName: "Ana"}
	src.On("EarliestStaff", mock.Anything).Return(staff, nil).Once()

	c := &memCache{items: map[string]any{}}
	r := NewFirstStaffResolver(zap.NewNop(), src, c, time.Minute)

	got, err := r.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "staff-1", got.ID)

	got, err = r.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.FirstName)

	src.AssertExpectations(t)
}

func TestFirstStaffResolver_CacheErrorFallsBackToStore(t *testing.T) {
	src := new(mockStaffSource)
	src.On("EarliestStaff", mock.Anything).Return(&model.StaffMember{ID: "staff-1"}, nil).Twice()

	c := &memCache{items: map[string]any{}, getErr: errors.New("redis down")}
	r := NewFirstStaffResolver(zap.NewNop(), src, c, time.Minute)

	for i := 0; i < 2; i++ {
		got, err := r.Current(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "staff-1", got.ID)
	}
	src.AssertExpectations(t)
}

func TestFirstStaffResolver_NoStaff(t *testing.T) {
	src := new(mockStaffSource)
	src.On("EarliestStaff", mock.Anything).Return(nil, apperr.NotFound("staff member not found"))

	r := NewFirstStaffResolver(zap.NewNop(), src, cache.Noop{}, time.Minute)

	_, err := r.Current(context.Background())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
