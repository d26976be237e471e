package boot

/*
Kafka 관련 설정을 담는 옵션 구조체입니다.
Consumer 핸들러의 인자도 HTTP 핸들러와 같은 ArgumentResolver 체인으로 해석됩니다.
*/
type KafkaOptions struct {
	Brokers []string `yaml:"brokers"`

	/*
		이벤트 소비(Consumer) 설정
		nil이면 Kafka Consumer Runtime은 활성화되지 않습니다.
	*/
	Read *KafkaReadOptions `yaml:"read"`
}

/*
Kafka 이벤트 소비 시 사용되는 설정입니다.
Consumer Group 단위의 실행을 제어합니다.
*/
type KafkaReadOptions struct {
	GroupID string `yaml:"groupId"`
}
