package boot

/*
RabbitMQ 관련 설정입니다.
Read가 nil이면 RabbitMQ Consumer Runtime은 활성화되지 않습니다.
*/
type RabbitMqOptions struct {
	URL  string               `yaml:"url"`
	Read *RabbitMqReadOptions `yaml:"read"`
}

type RabbitMqReadOptions struct {
	// 큐 이름이 비어 있으면 Consumer 등록 토픽 이름을 큐 이름으로 사용합니다.
	Queue    string `yaml:"queue"`
	Consumer string `yaml:"consumer"`
	Prefetch int    `yaml:"prefetch"`
}
