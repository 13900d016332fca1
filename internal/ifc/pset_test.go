package ifc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkReusable_CreatesPropertySet(t *testing.T) {
	f := openHouse(t)
	wall := f.Entity(20)

	_, found := f.Reusable(wall)
	require.False(t, found)

	f.MarkReusable(wall, true)

	assert.Equal(t, 38, f.Len())
	pset := f.PropertySet(wall, ReusePsetName)
	require.NotNil(t, pset)
	assert.True(t, ValidGUID(GlobalID(pset)))
	assert.Equal(t, 5, pset.Attr(attrOwnerHistory).Ref)

	reusable, found := f.Reusable(wall)
	assert.True(t, found)
	assert.True(t, reusable)

	var out bytes.Buffer
	_, err := f.WriteTo(&out)
	require.NoError(t, err)
	again, err := Parse(&out)
	require.NoError(t, err)
	reusable, found = again.Reusable(again.Entity(20))
	assert.True(t, found)
	assert.True(t, reusable)
}

func TestMarkReusable_UpdatesExistingProperty(t *testing.T) {
	f := openHouse(t)
	slab := f.Entity(23)

	reusable, found := f.Reusable(slab)
	require.True(t, found)
	require.False(t, reusable)

	f.MarkReusable(slab, true)

	assert.Equal(t, 35, f.Len())
	assert.Equal(t, "IFCBOOLEAN(.T.)", f.Entity(50).Attr(2).Encode())
}

func TestMarkReusable_AddsPropertyToExistingSet(t *testing.T) {
	f := openHouse(t)
	f.Entity(50).SetAttr(0, String("Condition"))

	f.MarkReusable(f.Entity(23), true)

	assert.Equal(t, 36, f.Len())
	assert.Len(t, f.Entity(51).Attr(4).Items, 2)
	reusable, found := f.Reusable(f.Entity(23))
	assert.True(t, found)
	assert.True(t, reusable)
}

func TestMarkReusable_SharedSetIsNotModified(t *testing.T) {
	f := openHouse(t)
	f.Entity(52).SetAttr(relRelatedObjects, List(RefTo(23), RefTo(24)))

	f.MarkReusable(f.Entity(24), true)

	slabFlag, _ := f.Reusable(f.Entity(23))
	doorFlag, _ := f.Reusable(f.Entity(24))
	assert.False(t, slabFlag)
	assert.True(t, doorFlag)
	assert.Equal(t, "(#23)", f.Entity(52).Attr(relRelatedObjects).Encode())
	assert.NotEqual(t, 51, f.PropertySet(f.Entity(24), ReusePsetName).ID)
}
