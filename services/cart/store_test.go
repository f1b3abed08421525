package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartStore(t *testing.T) {

	t.Run("Sessions are isolated", func(t *testing.T) {
		store := NewStore()

		store.AddItem("session_a", burger, 1, "")
		store.AddItem("session_b", fries, 2, "")

		assert.Equal(t, 1, store.Snapshot("session_a").ItemCount())
		assert.Equal(t, 2, store.Snapshot("session_b").ItemCount())
		assert.True(t, store.Snapshot("session_c").IsEmpty())
	})

	t.Run("Listeners observe every mutation", func(t *testing.T) {
		store := NewStore()

		observed := []State{}
		unsubscribe := store.Subscribe("session_a", func(state State) {
			observed = append(observed, state)
		})
		defer unsubscribe()

		store.AddItem("session_a", burger, 1, "")
		store.UpdateQuantity("session_a", burger.UID, 3)
		store.AddItem("session_b", fries, 1, "") // other session, not observed

		assert.Len(t, observed, 2)
		assert.Equal(t, 1, observed[0].ItemCount())
		assert.Equal(t, 3, observed[1].ItemCount())
	})

	t.Run("Unsubscribed listeners are no longer notified", func(t *testing.T) {
		store := NewStore()

		notifications := 0
		unsubscribe := store.Subscribe("session_a", func(State) {
			notifications++
		})

		store.AddItem("session_a", burger, 1, "")
		unsubscribe()
		store.AddItem("session_a", burger, 1, "")

		assert.Equal(t, 1, notifications)
	})

	t.Run("Snapshot cannot be used to mutate the store", func(t *testing.T) {
		store := NewStore()
		store.AddItem("session_a", burger, 1, "")

		snapshot := store.Snapshot("session_a")
		snapshot.Lines[0].Quantity = 99

		assert.Equal(t, 1, store.Snapshot("session_a").Lines[0].Quantity)
	})

	t.Run("Clear empties the session cart and is idempotent", func(t *testing.T) {
		store := NewStore()
		store.AddItem("session_a", burger, 2, "")
		store.AddItem("session_a", fries, 1, "")

		state := store.Clear("session_a")
		assert.True(t, state.IsEmpty())
		assert.Equal(t, 0, state.TotalPrice)

		state = store.Clear("session_a")
		assert.True(t, state.IsEmpty())
	})
}
