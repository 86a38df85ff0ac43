package pm4

// type7/type3 opcode ids shared across adreno generations.
const (
	CP_NOP                     = 0x10
	CP_SKIP_IB2_ENABLE_GLOBAL  = 0x1d
	CP_REG_RMW                 = 0x21
	CP_SKIP_IB2_ENABLE_LOCAL   = 0x23
	CP_WAIT_FOR_IDLE           = 0x26
	CP_WAIT_FOR_ME             = 0x13
	CP_EXEC_CS                 = 0x33
	CP_INDIRECT_BUFFER_PFE     = 0x37
	CP_DRAW_INDX_OFFSET        = 0x38
	CP_WAIT_REG_MEM            = 0x3c
	CP_MEM_WRITE               = 0x3d
	CP_REG_TO_MEM              = 0x3e
	CP_INDIRECT_BUFFER         = 0x3f
	CP_SET_DRAW_STATE          = 0x43
	CP_EVENT_WRITE             = 0x46
	CP_SET_PSEUDO_REG          = 0x56
	CP_CONTEXT_REG_BUNCH       = 0x5c
	CP_SET_VISIBILITY_OVERRIDE = 0x64
	CP_SET_MARKER              = 0x65
	CP_MEM_TO_MEM              = 0x73
)

var opcodeNames = map[uint32]string{
	CP_NOP:                     "CP_NOP",
	CP_SKIP_IB2_ENABLE_GLOBAL:  "CP_SKIP_IB2_ENABLE_GLOBAL",
	CP_REG_RMW:                 "CP_REG_RMW",
	CP_SKIP_IB2_ENABLE_LOCAL:   "CP_SKIP_IB2_ENABLE_LOCAL",
	CP_WAIT_FOR_IDLE:           "CP_WAIT_FOR_IDLE",
	CP_WAIT_FOR_ME:             "CP_WAIT_FOR_ME",
	CP_EXEC_CS:                 "CP_EXEC_CS",
	CP_INDIRECT_BUFFER_PFE:     "CP_INDIRECT_BUFFER_PFE",
	CP_DRAW_INDX_OFFSET:        "CP_DRAW_INDX_OFFSET",
	CP_WAIT_REG_MEM:            "CP_WAIT_REG_MEM",
	CP_MEM_WRITE:               "CP_MEM_WRITE",
	CP_REG_TO_MEM:              "CP_REG_TO_MEM",
	CP_INDIRECT_BUFFER:         "CP_INDIRECT_BUFFER",
	CP_SET_DRAW_STATE:          "CP_SET_DRAW_STATE",
	CP_EVENT_WRITE:             "CP_EVENT_WRITE",
	CP_SET_PSEUDO_REG:          "CP_SET_PSEUDO_REG",
	CP_CONTEXT_REG_BUNCH:       "CP_CONTEXT_REG_BUNCH",
	CP_SET_VISIBILITY_OVERRIDE: "CP_SET_VISIBILITY_OVERRIDE",
	CP_SET_MARKER:              "CP_SET_MARKER",
	CP_MEM_TO_MEM:              "CP_MEM_TO_MEM",
}

// OpcodeName returns the symbolic name for a type7/type3 opcode, or ""
// if the opcode is not in the table.
func OpcodeName(opc uint32) string { return opcodeNames[opc] }
