package intake_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gsam "github.com/grailbio/hts/sam"

	"github.com/wecall-go/variantcore/intake"
)

// SampleForReadGroup maps each @RG ID to its SM sample name, falling
// back to the ID itself when SM is absent.
func TestSampleForReadGroupMapsIDToSampleName(t *testing.T) {
	header, err := gsam.NewHeader(nil, nil)
	require.NoError(t, err)

	rgWithSM, err := gsam.NewReadGroup("rg1", "", "", "", "", "", "", "patientA", "", "", time.Time{}, 0)
	require.NoError(t, err)
	require.NoError(t, header.AddReadGroup(rgWithSM))

	rgNoSM, err := gsam.NewReadGroup("rg2", "", "", "", "", "", "", "", "", "", time.Time{}, 0)
	require.NoError(t, err)
	require.NoError(t, header.AddReadGroup(rgNoSM))

	mapping := intake.SampleForReadGroup(header)
	assert.Equal(t, "patientA", mapping["rg1"])
	assert.Equal(t, "rg2", mapping["rg2"])
}

// SampleForRecord resolves a record's RG tag through the mapping, falls
// back to the raw RG value when unmapped, and returns "" when the
// record carries no RG tag at all.
func TestSampleForRecordResolvesAndFallsBack(t *testing.T) {
	mapping := map[string]string{"rg1": "patientA"}

	recWithMappedRG := &gsam.Record{}
	auxRG, err := gsam.NewAux(gsam.Tag{'R', 'G'}, "rg1")
	require.NoError(t, err)
	recWithMappedRG.AuxFields = append(recWithMappedRG.AuxFields, auxRG)
	assert.Equal(t, "patientA", intake.SampleForRecord(recWithMappedRG, mapping))

	recWithUnmappedRG := &gsam.Record{}
	auxUnmapped, err := gsam.NewAux(gsam.Tag{'R', 'G'}, "rg9")
	require.NoError(t, err)
	recWithUnmappedRG.AuxFields = append(recWithUnmappedRG.AuxFields, auxUnmapped)
	assert.Equal(t, "rg9", intake.SampleForRecord(recWithUnmappedRG, mapping))

	recNoRG := &gsam.Record{}
	assert.Equal(t, "", intake.SampleForRecord(recNoRG, mapping))
}
