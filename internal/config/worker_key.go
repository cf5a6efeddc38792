package config

type WorkerKeyStruct struct {
	NotificationFanoutQueue string
}

var WorkerKey = &WorkerKeyStruct{
	NotificationFanoutQueue: "notification_fanout_queue",
}
