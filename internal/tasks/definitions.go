package tasks

// DefineTasks registers all available tasks on r
func DefineTasks(r *Registry) {
	r.Register(LogInfoTask.TaskID(), LogInfoTask.HandleExecution)
	r.Register(ApplySettingTask.TaskID(), ApplySettingTask.HandleExecution)
	r.Register(RemoveSettingTask.TaskID(), RemoveSettingTask.HandleExecution)
}

// DefaultRegistry returns a registry with every task defined
func DefaultRegistry() *Registry {
	r := NewRegistry()
	DefineTasks(r)
	return r
}
