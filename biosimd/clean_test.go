package biosimd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wecall-go/variantcore/biosimd"
)

func TestCleanASCIISeqInplaceCapitalizesAndMasksNonACGT(t *testing.T) {
	seq := []byte("acgtACGTnNxy-")
	biosimd.CleanASCIISeqInplace(seq)
	assert.Equal(t, "ACGTACGTNNNNN", string(seq))
}

func TestCleanASCIISeqInplaceEmptyInput(t *testing.T) {
	seq := []byte{}
	biosimd.CleanASCIISeqInplace(seq)
	assert.Empty(t, seq)
}
