package model

const (
	// ProofSize is the number of edges in a cycle proof.
	ProofSize = 42

	// CycleLengthU8 is the size in bytes of an encoded cycle proof, one
	// little-endian uint64 per edge index.
	CycleLengthU8 = ProofSize * 8

	// BlockWindow is the number of most recent headers the difficulty retarget
	// looks at.
	BlockWindow = 24

	// BlockTimeSec is the desired number of seconds between blocks.
	BlockTimeSec = 60

	// NonceSize is the size of the nonce slot at the end of a serialized header.
	NonceSize = 4
)
