package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountedForm(t *testing.T) {
	assert.Equal(t, "1 ball", countedForm(1, "ball"))
	assert.Equal(t, "2 balls", countedForm(2, "ball"))
	assert.Equal(t, "0 boxes", countedForm(0, "box"))
}

func TestDescribeAmbiguousForms(t *testing.T) {
	scene := fixtureScene()
	ids := map[string]bool{"ball1": true, "ball2": true, "box1": true}
	phrase := describeAmbiguousForms(scene.Objects, ids)
	assert.Equal(t, "2 balls and 1 box", phrase)
}
