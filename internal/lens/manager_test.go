package lens

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	mgr := NewManager()
	require.NotNil(t, mgr)
	assert.Empty(t, mgr.Names())
}

func TestGetLens(t *testing.T) {
	mgr := NewManager()
	mgr.Set(Lens{Name: "A", Temp: []float64{1, 2}, Precip: []float64{3}, Agri: []float64{}})

	l, exists := mgr.Get("A")
	require.True(t, exists)
	assert.Equal(t, [3]int{2, 1, 0}, l.Lengths())

	_, exists = mgr.Get("C")
	assert.False(t, exists)
}

func TestGetReturnsCopies(t *testing.T) {
	mgr := NewManager()
	mgr.Set(Lens{Name: "A", Temp: []float64{1, 2}, Precip: []float64{}, Agri: []float64{}})

	l, _ := mgr.Get("A")
	l.Temp[0] = 42
	l.Temp = append(l.Temp, 3)

	again, _ := mgr.Get("A")
	assert.Equal(t, []float64{1, 2}, again.Temp, "Get should return copies, not references")
}

func TestSetDoesNotAliasCaller(t *testing.T) {
	mgr := NewManager()
	temp := []float64{1, 2}
	mgr.Set(Lens{Name: "A", Temp: temp, Precip: []float64{}, Agri: []float64{}})

	temp[0] = 7

	l, _ := mgr.Get("A")
	assert.Equal(t, 1.0, l.Temp[0])
}

func TestLensesAreIndependent(t *testing.T) {
	mgr := NewManager()
	mgr.Set(Lens{Name: "A", Temp: []float64{1, 2}, Precip: []float64{3}, Agri: []float64{}})
	mgr.Set(Lens{Name: "B", Temp: []float64{}, Precip: []float64{4, 5, 6}, Agri: []float64{7}})

	b, _ := mgr.Get("B")
	b.Precip = nil
	b.Agri = append(b.Agri, 8, 9)
	mgr.Set(b)

	a, _ := mgr.Get("A")
	assert.Equal(t, [3]int{2, 1, 0}, a.Lengths())
	assert.Equal(t, []string{"A", "B"}, mgr.Names())
}

func TestConcurrentAccess(t *testing.T) {
	mgr := NewManager()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			mgr.Set(Lens{Name: fmt.Sprintf("L%d", i%3), Temp: make([]float64, i), Precip: []float64{}, Agri: []float64{}})
		}(i)
		go func(i int) {
			defer wg.Done()
			mgr.Get(fmt.Sprintf("L%d", i%3))
			mgr.Names()
		}(i)
	}
	wg.Wait()

	assert.Len(t, mgr.Names(), 3)
}
