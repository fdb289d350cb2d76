package task

// Column is one day of the board split into its display lanes
type Column struct {
	Specific    []Task
	Legislation []Task
	TimeLogs    []Task
	Sticker     *Task
}

// Minutes is the total of every entry in the column, time logs included
func (c Column) Minutes() int {
	return Sum(c.Specific) + Sum(c.Legislation) + Sum(c.TimeLogs)
}

// Partition splits one day's tasks into lanes.
// Time logs and the sticker get their own slots. A task goes to Specific only
// when isSpecific accepts its topic title, everything else is Legislation.
func Partition(tasks []Task, isSpecific func(topicTitle string) bool) Column {
	c := Column{Specific: []Task{}, Legislation: []Task{}, TimeLogs: []Task{}}
	for _, t := range tasks {
		switch {
		case t.IsTimeLog():
			c.TimeLogs = append(c.TimeLogs, t)
		case t.IsSticker():
			t := t
			c.Sticker = &t
		case t.TopicTitle != "" && isSpecific != nil && isSpecific(t.TopicTitle):
			c.Specific = append(c.Specific, t)
		default:
			c.Legislation = append(c.Legislation, t)
		}
	}
	return c
}
