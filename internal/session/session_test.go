package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_StartsEmpty(t *testing.T) {
	s := New()
	assert.Equal(t, "", s.Token())
	assert.False(t, s.Authenticated())
	assert.Equal(t, "Bearer ", s.BearerHeader())
}

func TestSession_SetTokenOverwrites(t *testing.T) {
	var s Session
	s.SetToken("abc")
	assert.Equal(t, "abc", s.Token())
	assert.True(t, s.Authenticated())

	s.SetToken("def")
	assert.Equal(t, "def", s.Token())
	assert.Equal(t, "Bearer def", s.BearerHeader())

	s.SetToken("")
	assert.False(t, s.Authenticated())
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.SetToken(fmt.Sprintf("token-%d", i))
		}(i)
		go func() {
			defer wg.Done()
			_ = s.Token()
		}()
	}
	wg.Wait()
	assert.True(t, s.Authenticated())
}
