package types

// SubmitResultVersion is the current borsh layout version for SubmitResult.
const SubmitResultVersion = 7

// TransactionStatusKind discriminates the outcome of an executed transaction.
type TransactionStatusKind uint8

const (
	TxStatusSucceed TransactionStatusKind = iota
	TxStatusRevert
	TxStatusOutOfGas
	TxStatusOutOfFund
	TxStatusOutOfOffset
	TxStatusCallTooDeep
)

// TransactionStatus is a tagged union over the possible execution outcomes.
// Succeed and Revert carry the returned/reverted output bytes; the other
// variants carry none.
type TransactionStatus struct {
	Kind   TransactionStatusKind
	Output []byte
}

// Succeed constructs a successful status carrying the returned output.
func Succeed(output []byte) TransactionStatus {
	return TransactionStatus{Kind: TxStatusSucceed, Output: output}
}

// Revert constructs a reverted status carrying the revert reason bytes.
func Revert(output []byte) TransactionStatus {
	return TransactionStatus{Kind: TxStatusRevert, Output: output}
}

// IsOk reports whether execution succeeded. Revert and the OutOfGas,
// OutOfFund, OutOfOffset and CallTooDeep kinds are all reported as not ok.
func (s TransactionStatus) IsOk() bool {
	return s.Kind == TxStatusSucceed
}

func (s TransactionStatus) encode(w *Writer) {
	w.WriteU8(uint8(s.Kind))
	switch s.Kind {
	case TxStatusSucceed, TxStatusRevert:
		w.WriteBytes(s.Output)
	}
}

func decodeTransactionStatus(r *Reader) (TransactionStatus, error) {
	tag, err := r.ReadU8()
	if err != nil {
		return TransactionStatus{}, err
	}
	kind := TransactionStatusKind(tag)
	switch kind {
	case TxStatusSucceed, TxStatusRevert:
		out, err := r.ReadBytes()
		if err != nil {
			return TransactionStatus{}, err
		}
		return TransactionStatus{Kind: kind, Output: out}, nil
	case TxStatusOutOfGas, TxStatusOutOfFund, TxStatusOutOfOffset, TxStatusCallTooDeep:
		return TransactionStatus{Kind: kind}, nil
	default:
		return TransactionStatus{}, ErrStateCorrupted
	}
}

// ResultLog is one EVM log surfaced to the caller after promise extraction
// has removed the internal promise-envelope logs.
type ResultLog struct {
	Address Address
	Topics  []H256
	Data    []byte
}

func (l ResultLog) encode(w *Writer) {
	w.WriteFixedBytes(l.Address.Bytes())
	w.WriteU32(uint32(len(l.Topics)))
	for _, t := range l.Topics {
		w.WriteFixedBytes(t.Bytes())
	}
	w.WriteBytes(l.Data)
}

func decodeResultLog(r *Reader) (ResultLog, error) {
	addr, err := r.ReadFixedBytes(20)
	if err != nil {
		return ResultLog{}, err
	}
	n, err := r.ReadU32()
	if err != nil {
		return ResultLog{}, err
	}
	topics := make([]H256, n)
	for i := range topics {
		t, err := r.ReadFixedBytes(32)
		if err != nil {
			return ResultLog{}, err
		}
		topics[i] = H256(t)
	}
	data, err := r.ReadBytes()
	if err != nil {
		return ResultLog{}, err
	}
	return ResultLog{Address: Address(addr), Topics: topics, Data: data}, nil
}

// SubmitResult is the value returned to the caller after a transaction has
// run through the submit pipeline.
type SubmitResult struct {
	Version uint8
	Status  TransactionStatus
	GasUsed uint64
	Logs    []ResultLog
}

// NewSubmitResult builds a SubmitResult at the current layout version.
func NewSubmitResult(status TransactionStatus, gasUsed uint64, logs []ResultLog) SubmitResult {
	return SubmitResult{Version: SubmitResultVersion, Status: status, GasUsed: gasUsed, Logs: logs}
}

// Encode borsh-serializes the SubmitResult.
func (s SubmitResult) Encode() []byte {
	w := NewWriter()
	w.WriteU8(s.Version)
	s.Status.encode(w)
	w.WriteU64(s.GasUsed)
	w.WriteU32(uint32(len(s.Logs)))
	for _, l := range s.Logs {
		l.encode(w)
	}
	return w.Bytes()
}

// DecodeSubmitResult borsh-deserializes a SubmitResult.
func DecodeSubmitResult(data []byte) (SubmitResult, error) {
	r := NewReader(data)
	version, err := r.ReadU8()
	if err != nil {
		return SubmitResult{}, err
	}
	status, err := decodeTransactionStatus(r)
	if err != nil {
		return SubmitResult{}, err
	}
	gasUsed, err := r.ReadU64()
	if err != nil {
		return SubmitResult{}, err
	}
	n, err := r.ReadU32()
	if err != nil {
		return SubmitResult{}, err
	}
	logs := make([]ResultLog, n)
	for i := range logs {
		l, err := decodeResultLog(r)
		if err != nil {
			return SubmitResult{}, err
		}
		logs[i] = l
	}
	if err := r.Finish(); err != nil {
		return SubmitResult{}, err
	}
	return SubmitResult{Version: version, Status: status, GasUsed: gasUsed, Logs: logs}, nil
}
