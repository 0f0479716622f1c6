package encode

// Appender abstracts a partition.Writer's append entry point so encoders
// can be handed either the normal append path or the dict-as-tuple path
// (which keeps the coarser minSize capacity check) without duplicating
// encoder logic. *partition.Writer.Append and
// *partition.Writer.AppendDictRow both satisfy this signature.
type Appender func(requiredBytes int, encode func(slot []byte, slotOffset int) error) error
