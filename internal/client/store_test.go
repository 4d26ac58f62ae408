package client

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pethealth/internal/domain"
)

func notif(id string, createdAt time.Time, read bool) domain.Notification {
	return domain.Notification{
		ID:        id,
		UserID:    1,
		Type:      domain.NotifAppointment,
		Title:     "t-" + id,
		Message:   "m-" + id,
		IsRead:    read,
		CreatedAt: createdAt,
	}
}

func TestStoreAddPrependsNewestFirst(t *testing.T) {
	s := NewStore()
	base := time.Now()

	s.Add(notif("a", base, false))
	s.Add(notif("b", base.Add(time.Minute), false))
	s.Add(notif("c", base.Add(2*time.Minute), false))

	list := s.List()
	assert.Len(t, list, 3)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
	assert.Equal(t, "a", list[2].ID)
	assert.Equal(t, 3, s.UnreadCount())
}

func TestStoreAddReadRecordDoesNotBumpCounter(t *testing.T) {
	s := NewStore()
	s.Add(notif("a", time.Now(), true))

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.UnreadCount())
}

func TestStoreAddReplacesDuplicateID(t *testing.T) {
	s := NewStore()
	base := time.Now()

	s.Add(notif("a", base, false))
	updated := notif("a", base, false)
	updated.Title = "updated"
	s.Add(updated)

	list := s.List()
	assert.Len(t, list, 1)
	assert.Equal(t, "updated", list[0].Title)
	assert.Equal(t, 1, s.UnreadCount())
}

func TestStoreMarkAsRead(t *testing.T) {
	s := NewStore()
	base := time.Now()
	s.Add(notif("a", base, false))
	s.Add(notif("b", base.Add(time.Minute), false))

	s.MarkAsRead("a")
	assert.Equal(t, 1, s.UnreadCount())

	// repeated acknowledgement is a no-op
	s.MarkAsRead("a")
	assert.Equal(t, 1, s.UnreadCount())

	// unknown id is a no-op
	s.MarkAsRead("zzz")
	assert.Equal(t, 1, s.UnreadCount())

	for _, n := range s.List() {
		if n.ID == "a" {
			assert.True(t, n.IsRead)
		}
	}
}

func TestStoreUnreadNeverNegative(t *testing.T) {
	s := NewStore()
	s.Add(notif("a", time.Now(), true))

	s.Delete("a")
	assert.Equal(t, 0, s.UnreadCount())

	s.Add(notif("b", time.Now(), false))
	s.MarkAsRead("b")
	s.Delete("b")
	assert.Equal(t, 0, s.UnreadCount())
}

func TestStoreMarkAllAsRead(t *testing.T) {
	s := NewStore()
	base := time.Now()
	for i := 0; i < 5; i++ {
		s.Add(notif(fmt.Sprintf("n%d", i), base.Add(time.Duration(i)*time.Second), false))
	}

	s.MarkAllAsRead()

	assert.Equal(t, 0, s.UnreadCount())
	for _, n := range s.List() {
		assert.True(t, n.IsRead)
	}
}

func TestStoreMarkCompletedKeepsReadState(t *testing.T) {
	s := NewStore()
	s.Add(notif("a", time.Now(), false))

	s.MarkCompleted("a")

	list := s.List()
	assert.True(t, list[0].IsCompleted)
	assert.False(t, list[0].IsRead)
	assert.Equal(t, 1, s.UnreadCount())
}

func TestStoreDelete(t *testing.T) {
	s := NewStore()
	base := time.Now()
	s.Add(notif("a", base, false))
	s.Add(notif("b", base.Add(time.Second), true))

	s.Delete("a")
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, s.UnreadCount())

	s.Delete("b")
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.UnreadCount())
}

func TestStoreClearAll(t *testing.T) {
	s := NewStore()
	s.Add(notif("a", time.Now(), false))
	s.Add(notif("b", time.Now(), false))

	s.ClearAll()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.UnreadCount())
}

func TestStoreMergeFetchedWinsOnConflict(t *testing.T) {
	s := NewStore()
	base := time.Now()

	// a push arrived first, unread
	s.Add(notif("a", base, false))

	// the fetch says the same record is already read server-side
	fetchedA := notif("a", base, true)
	fetchedB := notif("b", base.Add(-time.Minute), false)
	s.Merge([]domain.Notification{fetchedA, fetchedB})

	list := s.List()
	assert.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.True(t, list[0].IsRead)
	assert.Equal(t, "b", list[1].ID)
	assert.Equal(t, 1, s.UnreadCount())
}

func TestStoreMergeKeepsPushedRecordsFetchMissed(t *testing.T) {
	s := NewStore()
	base := time.Now()

	// pushed after the page the fetch covers
	s.Add(notif("fresh", base.Add(time.Hour), false))

	s.Merge([]domain.Notification{
		notif("old1", base, true),
		notif("old2", base.Add(-time.Minute), false),
	})

	list := s.List()
	assert.Len(t, list, 3)
	assert.Equal(t, "fresh", list[0].ID)
	assert.Equal(t, "old1", list[1].ID)
	assert.Equal(t, "old2", list[2].ID)
	assert.Equal(t, 2, s.UnreadCount())
}

func TestStoreMergeSortsNewestFirst(t *testing.T) {
	s := NewStore()
	base := time.Now()

	s.Merge([]domain.Notification{
		notif("mid", base.Add(time.Minute), false),
		notif("oldest", base, false),
		notif("newest", base.Add(2*time.Minute), false),
	})

	list := s.List()
	assert.Equal(t, []string{"newest", "mid", "oldest"}, []string{list[0].ID, list[1].ID, list[2].ID})
}

func TestStoreListReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Add(notif("a", time.Now(), false))

	list := s.List()
	list[0].Title = "mutated"

	assert.Equal(t, "t-a", s.List()[0].Title)
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	base := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id := fmt.Sprintf("g%d-n%d", i, j)
				s.Add(notif(id, base.Add(time.Duration(j)*time.Millisecond), false))
				s.MarkAsRead(id)
				s.List()
				s.UnreadCount()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 500, s.Len())
	assert.Equal(t, 0, s.UnreadCount())
}
