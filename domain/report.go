package domain

// Column identifies one of the report's output columns. The numeric value is
// also the 0-based sheet column, so ColMachine is A and ColWageB is AB.
type Column int

const (
	ColMachine Column = iota
	ColWorkerA
	ColWorkerB
	ColSizeCode
	ColLotNo
	ColOrderNo
	ColOutputA
	ColOutputB
	ColSpeedA
	ColSpeedB
	ColEfficiencyA
	ColEfficiencyB
	ColMeterStartA
	ColMeterEndA
	ColMeterStartB
	ColMeterEndB
	ColCutLengthA
	ColCutLengthB
	ColRollWeightA
	ColRollWeightB
	ColDefectsA
	ColDefectsB
	ColAverageA
	ColAverageB
	ColSupplementA
	ColSupplementB
	ColWageA
	ColWageB

	ColumnCount
)

// ColumnSpec describes how a report column is named, labelled and formatted.
type ColumnSpec struct {
	ID      Column
	Name    string // internal name
	Label   string // header text shown in the workbook
	Numeric bool
	Formula bool
}

const (
	labelCutLengthA = "ความยาวตัดม้วน กะ A"
	labelCutLengthB = "ความยาวตัดม้วน กะ B"
)

// Columns lists every report column in sheet order.
var Columns = [ColumnCount]ColumnSpec{
	{ID: ColMachine, Name: "เครื่อง"},
	{ID: ColWorkerA, Name: "พนักงานทอ กะ A"},
	{ID: ColWorkerB, Name: "พนักงานทอ กะ B"},
	{ID: ColSizeCode, Name: "ขนาดหน้าผ้า (รหัส)"},
	{ID: ColLotNo, Name: "Lot.No"},
	{ID: ColOrderNo, Name: "เลขที่ใบสั่งผลิต"},
	{ID: ColOutputA, Name: "ยอดทอ กะ A", Numeric: true, Formula: true},
	{ID: ColOutputB, Name: "ยอดทอ กะ B", Numeric: true, Formula: true},
	{ID: ColSpeedA, Name: "ความเร็วรอบ กะ A", Numeric: true},
	{ID: ColSpeedB, Name: "ความเร็วรอบ กะ B", Numeric: true},
	{ID: ColEfficiencyA, Name: "ประสิทธิภาพ (กะ A)%", Numeric: true},
	{ID: ColEfficiencyB, Name: "ประสิทธิภาพ (กะ B)%", Numeric: true},
	{ID: ColMeterStartA, Name: "มิเตอร์เริ่มงาน กะ A", Numeric: true},
	{ID: ColMeterEndA, Name: "มิเตอร์เลิกงาน กะ A", Numeric: true},
	{ID: ColMeterStartB, Name: "มิเตอร์เริ่มงาน กะ B", Numeric: true},
	{ID: ColMeterEndB, Name: "มิเตอร์เลิกงาน กะ B", Numeric: true},
	{ID: ColCutLengthA, Name: "ความยาวตัดม้วน กะ A (เดิม)", Label: labelCutLengthA, Numeric: true},
	{ID: ColCutLengthB, Name: "ความยาวตัดม้วน กะ B (เดิม)", Label: labelCutLengthB, Numeric: true},
	{ID: ColRollWeightA, Name: "น้ำหนักม้วน กะ A"},
	{ID: ColRollWeightB, Name: "น้ำหนักม้วน กะ B"},
	{ID: ColDefectsA, Name: "จำนวนแผล กะ A"},
	{ID: ColDefectsB, Name: "จำนวนแผล กะ B"},
	{ID: ColAverageA, Name: "ค่าเฉลี่ย กะ A"},
	{ID: ColAverageB, Name: "ค่าเฉลี่ย กะ B"},
	{ID: ColSupplementA, Name: "Y", Label: labelCutLengthA, Numeric: true},
	{ID: ColSupplementB, Name: "Z", Label: labelCutLengthB, Numeric: true},
	{ID: ColWageA, Name: "ค่าแรงพนักงานกะ A", Formula: true},
	{ID: ColWageB, Name: "ค่าแรงพนักงานกะ B", Formula: true},
}

// Spec returns the ColumnSpec of c.
func (c Column) Spec() ColumnSpec { return Columns[c] }

// DisplayLabel is the header text for c.
func (c Column) DisplayLabel() string {
	s := Columns[c]
	if s.Label != "" {
		return s.Label
	}
	return s.Name
}

// HeaderLabels returns the header row in sheet order.
func HeaderLabels() []string {
	labels := make([]string, ColumnCount)
	for i := range Columns {
		labels[i] = Column(i).DisplayLabel()
	}
	return labels
}

// Row is one report line.
type Row struct {
	Cells [ColumnCount]Value
}

// NewRow starts a row for machine.
func NewRow(machine string) Row {
	var r Row
	r.Cells[ColMachine] = Text(machine)
	return r
}

// Get returns the value in column c.
func (r *Row) Get(c Column) Value { return r.Cells[c] }

// Set stores v in column c.
func (r *Row) Set(c Column, v Value) { r.Cells[c] = v }

// Machine is the row's machine identifier.
func (r *Row) Machine() string { return r.Cells[ColMachine].Text }

// Block is a contiguous run of report rows written together.
type Block struct {
	Rows []Row
}

// Len returns the number of rows.
func (b *Block) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Rows)
}

// Empty reports whether the block has no rows.
func (b *Block) Empty() bool { return b.Len() == 0 }
